package demangle

// builtinTypes maps a mangled builtin-type code to its C++ spelling.
// Two-character "D..." codes are checked before the single-character
// table, since the Itanium `<builtin-type>` grammar favors the longer
// match.
var builtinTypes = map[string]string{
	"v": "void",
	"w": "wchar_t",
	"b": "bool",
	"c": "char",
	"a": "signed char",
	"h": "unsigned char",
	"s": "short",
	"t": "unsigned short",
	"i": "int",
	"j": "unsigned int",
	"l": "long",
	"m": "unsigned long",
	"x": "long long",
	"y": "unsigned long long",
	"n": "__int128",
	"o": "unsigned __int128",
	"f": "float",
	"d": "double",
	"e": "long double",
	"g": "__float128",
	"z": "...",

	"Dd": "decimal64",
	"De": "decimal128",
	"Df": "decimal32",
	"Dh": "decimal16",
	"Di": "char32_t",
	"Ds": "char16_t",
	"Da": "auto",
	"Dc": "decltype(auto)",
	"Dn": "std::nullptr_t",
	"Du": "char8_t",
}

// twoCharBuiltinPrefix reports whether b (a single byte) can start a
// two-character "D..." builtin code.
func twoCharBuiltinPrefix(b byte) bool { return b == 'D' }

// standardAbbrevs maps the St/Sa/Ss/... two-letter codes to the
// std:: names they abbreviate.
var standardAbbrevs = map[string]string{
	"St": "std",
	"Sa": "std::allocator",
	"Sb": "std::basic_string",
	"Ss": "std::string",
	"Si": "std::istream",
	"So": "std::ostream",
	"Sd": "std::iostream",
}

// operatorCodes maps two-letter operator codes to (symbol, alphabetic).
// alphabetic operators ("new", "delete", "co_await", ...) get a space
// after the word "operator"; symbolic ones ("+", "==", ...) do not.
type operatorSpelling struct {
	symbol     string
	alphabetic bool
}

var operatorCodes = map[string]operatorSpelling{
	"nw": {"new", true},
	"na": {"new[]", true},
	"dl": {"delete", true},
	"da": {"delete[]", true},
	"aw": {"co_await", true},
	"ps": {"+", false},
	"ng": {"-", false},
	"ad": {"&", false},
	"de": {"*", false},
	"co": {"~", false},
	"pl": {"+", false},
	"mi": {"-", false},
	"ml": {"*", false},
	"dv": {"/", false},
	"rm": {"%", false},
	"an": {"&", false},
	"or": {"|", false},
	"eo": {"^", false},
	"aS": {"=", false},
	"pL": {"+=", false},
	"mI": {"-=", false},
	"mL": {"*=", false},
	"dV": {"/=", false},
	"rM": {"%=", false},
	"aN": {"&=", false},
	"oR": {"|=", false},
	"eO": {"^=", false},
	"ls": {"<<", false},
	"rs": {">>", false},
	"lS": {"<<=", false},
	"rS": {">>=", false},
	"eq": {"==", false},
	"ne": {"!=", false},
	"lt": {"<", false},
	"gt": {">", false},
	"le": {"<=", false},
	"ge": {">=", false},
	"ss": {"<=>", false},
	"nt": {"!", false},
	"aa": {"&&", false},
	"oo": {"||", false},
	"pp": {"++", false},
	"mm": {"--", false},
	"cm": {",", false},
	"pm": {"->*", false},
	"pt": {"->", false},
	"cl": {"()", false},
	"ix": {"[]", false},
	"qu": {"?", false},
	"st": {"sizeof", true},
	"sz": {"sizeof", true},
	"at": {"alignof", true},
	"az": {"alignof", true},
}
