package token

var keywords = map[string]Kind{
	"fn":  KwFn,
	"ret": KwRet,
	"i32": KwI32,
}

// LookupKeyword reports whether ident is a reserved word. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
