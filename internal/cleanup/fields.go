package cleanup

// fieldRemovalSet lists the deprecated user fields. The role flags and city
// scope markers moved to the roles collection and are no longer read.
var fieldRemovalSet = []string{
	"isMaster",
	"isComissao",
	"isJurado",
	"comissaoCidade",
	"scopeCidades",
}

// FieldRemovalSet returns a copy of the deprecated user field names.
func FieldRemovalSet() []string {
	return append([]string(nil), fieldRemovalSet...)
}
