package core

// TextReader loads a local file as text. Plain text is returned verbatim;
// document formats are converted first.
type TextReader interface {
	Read(path string) (string, error)
}
