package keyboard

import (
	"fmt"
	"strings"
)

const (
	ActionLanguage = "lang"
	ActionLocation = "loc"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string // "lang", "loc"
	Value  string
}

// ParseCallback parses "action:value" callback data
func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, ":")
	if !ok || action == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: action,
		Value:  value,
	}, nil
}

func EncodeCallback(action, value string) string {
	return action + ":" + value
}
