package token

// maxClientIDLength is enforced by the issuing endpoints as well; validating
// locally gives a descriptive failure instead of an opaque HTTP error.
const maxClientIDLength = 64

// ValidateClientID reports whether a string can be used as a client
// identifier. The platform allows at most 64 characters, drawn from ASCII
// letters, digits and the characters @, -, _, . and :.
func ValidateClientID(id string) error {
	for _, c := range id {
		if !isClientIDChar(c) {
			return &ClientIDError{
				ID:     id,
				Reason: "may only contain alphanumeric characters (a-z, A-Z, 0-9) and @, -, _, . and :",
			}
		}
	}
	// All valid characters are single-byte ASCII, so len is the character
	// count here.
	if len(id) > maxClientIDLength {
		return &ClientIDError{ID: id, Reason: "exceeds the maximum of 64 characters"}
	}
	return nil
}

func isClientIDChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '@', c == '-', c == '_', c == '.', c == ':':
		return true
	}
	return false
}
