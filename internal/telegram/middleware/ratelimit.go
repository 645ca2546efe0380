package middleware

import (
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nilecare/advisory-backend/internal/telegram/render"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL  = time.Hour
	warningInterval = 30 * time.Second
)

// userLimit is the rate limit state of one user
type userLimit struct {
	limiter       *rate.Limiter
	mu            sync.Mutex
	warningsSent  int
	lastWarningAt time.Time
}

// RateLimiterMiddleware applies a token bucket per user.
// Buckets of users idle for an hour are evicted.
type RateLimiterMiddleware struct {
	limits *cache.Cache
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	sender Sender
	logger *zap.Logger
	now    func() time.Time
}

func NewRateLimiterMiddleware(requestsPerMinute, burst int, sender Sender, logger *zap.Logger) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits: cache.New(limiterIdleTTL, 10*time.Minute),
		limit:  rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:  burst,
		sender: sender,
		logger: logger,
		now:    time.Now,
	}
}

// Handle drops the update when the user is over the limit
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateOrigin(update)
	if !ok {
		next(update)
		return
	}

	if !rl.allow(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allow(userID, chatID int64) bool {
	ul := rl.userLimit(userID)
	now := rl.now()

	ul.mu.Lock()
	defer ul.mu.Unlock()

	if ul.limiter.AllowN(now, 1) {
		ul.warningsSent = 0
		return true
	}

	if now.Sub(ul.lastWarningAt) > warningInterval {
		ul.warningsSent++
		ul.lastWarningAt = now
		rl.warn(chatID, ul.warningsSent)
	}
	return false
}

// userLimit returns the user's bucket and refreshes its idle expiry
func (rl *RateLimiterMiddleware) userLimit(userID int64) *userLimit {
	key := strconv.FormatInt(userID, 10)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limits.Get(key); ok {
		ul := v.(*userLimit)
		rl.limits.SetDefault(key, ul)
		return ul
	}

	ul := &userLimit{limiter: rate.NewLimiter(rl.limit, rl.burst)}
	rl.limits.SetDefault(key, ul)
	return ul
}

func (rl *RateLimiterMiddleware) warn(chatID int64, warnings int) {
	text := render.ErrRateLimited
	if warnings > 1 {
		text = render.ErrRateLimitedRepeat
	}

	if _, err := rl.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
