package token

var keywords = map[string]Kind{
	"let":    KwLet,
	"set":    KwSet,
	"print":  KwPrint,
	"move":   KwMove,
	"copy":   KwCopy,
	"clone":  KwClone,
	"ref":    KwRef,
	"unsafe": KwUnsafe,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые, распознаются только lowercase версии.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
