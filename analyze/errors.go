package analyze

import "errors"

// ErrEmptyInput is returned when the markup string is empty or whitespace.
var ErrEmptyInput = errors.New("analyze: empty markup input")

// ErrMalformedMarkup is returned when the input is not markup at all
// (binary data, invalid encoding). Unclosed tags, implied sections and
// other real-world damage are recovered from, never rejected.
var ErrMalformedMarkup = errors.New("analyze: input is not parseable markup")
