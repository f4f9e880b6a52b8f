package aggregate

import "github.com/danielolaszy/standup/internal/logging"

// Section is the outcome of asking one collaborator for its data: either
// the content, or a placeholder sentence explaining why it is unavailable.
type Section[T any] struct {
	Value       T
	Placeholder string
	Err         error
}

// Available reports whether the collaborator produced content.
func (s Section[T]) Available() bool {
	return s.Placeholder == ""
}

func available[T any](v T) Section[T] {
	return Section[T]{Value: v}
}

func unavailable[T any](source, placeholder string, err error) Section[T] {
	log := logging.GetLogger().With("source", source)
	if err != nil {
		log.Warn("source unavailable", "error", err, "placeholder", placeholder)
	} else {
		log.Debug("source unavailable", "placeholder", placeholder)
	}
	return Section[T]{Placeholder: placeholder, Err: err}
}

// text returns the content when available, otherwise the placeholder.
func text(s Section[string]) string {
	if s.Available() {
		return s.Value
	}
	return s.Placeholder
}

// content returns the content when available, otherwise an empty string.
func content(s Section[string]) string {
	if s.Available() {
		return s.Value
	}
	return ""
}
