package translate

import "context"

// Model translates text into the language with the given ISO 639-1 code.
type Model interface {
	Translate(ctx context.Context, text, lang string) (string, error)
}
