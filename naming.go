package gson

import (
	"strings"
	"unicode"
)

// NamingPolicy computes the external member name for a field. The same
// policy serves both directions: decode matches incoming keys by
// recomputing each field's external name.
//
// A field carrying an explicit gson:"name" tag uses that name verbatim and
// the policy is not consulted.
type NamingPolicy func(fieldName string) string

// IdentityNaming keeps the Go field name unchanged. This is the default.
func IdentityNaming(name string) string { return name }

// LowerCamelNaming lowercases the leading character: UserName -> userName.
func LowerCamelNaming(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return name
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// UpperCamelNaming uppercases the leading character.
func UpperCamelNaming(name string) string {
	r := []rune(name)
	if len(r) == 0 {
		return name
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SnakeCaseNaming separates camel-case words with underscores and
// lowercases: UserName -> user_name.
func SnakeCaseNaming(name string) string {
	return separateWords(name, '_')
}

// KebabCaseNaming separates camel-case words with dashes and lowercases:
// UserName -> user-name.
func KebabCaseNaming(name string) string {
	return separateWords(name, '-')
}

// separateWords inserts sep before each upper-case rune that follows a
// non-upper rune, then lowercases the whole name. Runs of capitals stay
// together: "HTTPAddr" -> "http_addr".
func separateWords(name string, sep rune) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if prevLower || nextLower {
				b.WriteRune(sep)
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// externalName resolves a field's external member name: the explicit tag
// override when present, the policy otherwise. Tag options after a comma
// are ignored.
func externalName(f Field, policy NamingPolicy) string {
	if tag, ok := f.Tags[tagName]; ok && tag != "" && tag != "-" {
		if i := strings.IndexByte(tag, ','); i >= 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	return policy(f.Name)
}
