package core

import "errors"

// Error taxonomy shared by every client. Callers match with errors.Is; the
// concrete error always wraps one of these with the backend detail.
var (
	// ErrSecretUnavailable indicates the key-management backend call failed.
	ErrSecretUnavailable = errors.New("secret unavailable")
	// ErrSecretFormat indicates the secret payload is not a JSON object holding the requested key.
	ErrSecretFormat = errors.New("secret format error")
	// ErrSynthesis indicates the speech synthesis backend failed.
	ErrSynthesis = errors.New("speech synthesis failed")
	// ErrStoreWrite indicates an object could not be written.
	ErrStoreWrite = errors.New("object store write failed")
	// ErrStoreRead indicates an object could not be read.
	ErrStoreRead = errors.New("object store read failed")
	// ErrObjectNotFound is wrapped together with ErrStoreRead when the key does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrDecode indicates a payload could not be parsed.
	ErrDecode = errors.New("decode failed")
	// ErrEncode indicates a document could not be serialized.
	ErrEncode = errors.New("encode failed")
	// ErrFetch indicates a remote resource could not be fetched.
	ErrFetch = errors.New("fetch failed")
	// ErrInvalidInput indicates a caller supplied an unusable argument.
	ErrInvalidInput = errors.New("invalid input")
)
