package http

import "time"

type HttpOpts func(*clientSettings)

// Timeouts groups client and transport deadlines. Zero fields keep the defaults.
type Timeouts struct {
	Dial           time.Duration
	KeepAlive      time.Duration
	Request        time.Duration
	ResponseHeader time.Duration
	IdleConn       time.Duration
	TLSHandshake   time.Duration
}

func (t Timeouts) merge(o Timeouts) Timeouts {
	pick := func(cur, next time.Duration) time.Duration {
		if next > 0 {
			return next
		}
		return cur
	}
	return Timeouts{
		Dial:           pick(t.Dial, o.Dial),
		KeepAlive:      pick(t.KeepAlive, o.KeepAlive),
		Request:        pick(t.Request, o.Request),
		ResponseHeader: pick(t.ResponseHeader, o.ResponseHeader),
		IdleConn:       pick(t.IdleConn, o.IdleConn),
		TLSHandshake:   pick(t.TLSHandshake, o.TLSHandshake),
	}
}

func WithTimeouts(t Timeouts) HttpOpts {
	return func(s *clientSettings) {
		s.timeouts = s.timeouts.merge(t)
	}
}

func WithIdlePool(maxIdle, maxIdlePerHost int) HttpOpts {
	return func(s *clientSettings) {
		s.maxIdleConns = maxIdle
		s.maxIdleConnsPerHost = maxIdlePerHost
	}
}

// WithTransport adds a RoundTripper layer; later layers wrap earlier ones.
func WithTransport(transport TransportFunc) HttpOpts {
	return func(s *clientSettings) {
		s.layers = append(s.layers, transport)
	}
}

// WithMaxResponseSize caps how many response bytes are read. Zero disables the cap.
func WithMaxResponseSize(size int64) HttpOpts {
	return func(s *clientSettings) {
		s.maxResponseSize = size
	}
}
