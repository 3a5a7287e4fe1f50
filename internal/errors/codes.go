package errors

// Rule identifiers reported by the analyzer.
// The codes are stable API for editor integrations and CI filters.
//
// Code ranges:
// E001-E009: Syntax errors
// E010-E019: Contract structure and storage errors
// E020-E029: Method signature errors
// E100-E199: File access errors
// E999:      Internal rule failures
// W001-W009: Safety warnings
// W010-W019: Header warnings
// W020-W029: Signature warnings
//
// The version subsystem reports under named ids (version-info,
// version-upgrade-available, invalid-version) rather than numeric codes.

const (
	// E001: Source does not parse
	ErrSyntax = "E001"

	// E010: Non-deterministic call outside an equivalence boundary
	ErrUnsafeNondet = "E010"

	// E011: More than one contract class in a file
	ErrMultipleContracts = "E011"

	// E012: __init__ marked public
	ErrPublicInit = "E012"

	// E013: Dunder method marked public
	ErrPublicDunder = "E013"

	// E014: Custom storage type without @allow_storage
	ErrMissingAllowStorage = "E014"

	// E015: Unsized int in storage
	ErrBareIntStorage = "E015"

	// E016: Python list/dict in storage
	ErrPythonCollectionStorage = "E016"

	// E017: Fixed array with non-positive size
	ErrArraySize = "E017"

	// E018: Unsupported TreeMap key type
	ErrTreeMapKey = "E018"

	// E019: Special method missing its required decorator
	ErrSpecialMethodDecorator = "E019"

	// E021: *args/**kwargs on a public method
	ErrVariadicPublicMethod = "E021"

	// E022: Method without self receiver
	ErrMissingSelf = "E022"

	// E023: Sized integer type in a public method parameter
	ErrSizedIntParam = "E023"

	// E024: Sized integer type in a public method return
	ErrSizedIntReturn = "E024"

	// E100: File not found
	ErrFileNotFound = "E100"

	// E101: File unreadable
	ErrFileUnreadable = "E101"

	// E999: Rule implementation failed
	ErrRulePanic = "E999"

	// W001: Forbidden module import
	WarnForbiddenImport = "W001"

	// W002: Call to a denylisted non-deterministic function
	WarnNondetCall = "W002"

	// W004: Raising a builtin exception inside a contract
	WarnBuiltinException = "W004"

	// W010: Missing dependency header
	WarnMissingHeader = "W010"

	// W011: Header without the platform SDK dependency
	WarnMissingSDKDep = "W011"

	// W020: View method without a return annotation
	WarnViewReturnType = "W020"

	// W021: Dataclass with sized-integer fields but no @allow_storage
	WarnDataclassSizedInt = "W021"

	// Version findings
	InfoVersion          = "version-info"
	InfoUpgradeAvailable = "version-upgrade-available"
	WarnInvalidVersion   = "invalid-version"
)

// Description returns a human-readable summary of a rule id.
func Description(code string) string {
	switch code {
	case ErrSyntax:
		return "Source file does not parse"
	case ErrUnsafeNondet:
		return "Non-deterministic operation used outside an equivalence boundary"
	case ErrMultipleContracts:
		return "Contract file defines more than one contract class"
	case ErrPublicInit:
		return "Constructor must not carry a public decorator"
	case ErrPublicDunder:
		return "Special methods must not carry a public decorator"
	case ErrMissingAllowStorage:
		return "Custom type used in storage requires @allow_storage"
	case ErrBareIntStorage:
		return "Storage fields must use sized integer types"
	case ErrPythonCollectionStorage:
		return "Storage fields must use VM collection types"
	case ErrArraySize:
		return "Fixed-size array length must be positive"
	case ErrTreeMapKey:
		return "TreeMap key type is not supported"
	case ErrSpecialMethodDecorator:
		return "Special method requires @gl.public.write"
	case ErrVariadicPublicMethod:
		return "Public methods must declare explicit parameters"
	case ErrMissingSelf:
		return "Instance method is missing the self receiver"
	case ErrSizedIntParam:
		return "Public method parameters must use plain int"
	case ErrSizedIntReturn:
		return "Public method returns must use plain int"
	case ErrFileNotFound:
		return "File not found"
	case ErrFileUnreadable:
		return "File could not be read"
	case ErrRulePanic:
		return "Rule implementation failed"
	case WarnForbiddenImport:
		return "Module is forbidden in deterministic contracts"
	case WarnNondetCall:
		return "Call is non-deterministic"
	case WarnBuiltinException:
		return "Builtin exception raised inside a contract"
	case WarnMissingHeader:
		return "Contract is missing its dependency header"
	case WarnMissingSDKDep:
		return "Dependency header does not declare the platform SDK"
	case WarnViewReturnType:
		return "View method should declare a return type"
	case WarnDataclassSizedInt:
		return "Dataclass with sized integers should use @allow_storage"
	case WarnInvalidVersion:
		return "Version comment is malformed"
	case InfoVersion:
		return "Resolved contract version"
	case InfoUpgradeAvailable:
		return "A newer platform version is available"
	default:
		return "Unknown rule id"
	}
}

// IsWarning reports whether a rule id is advisory rather than blocking.
func IsWarning(code string) bool {
	if code == "" {
		return false
	}
	return code[0] == 'W' || code == WarnInvalidVersion
}

// Category groups rule ids for documentation and filtering.
func Category(code string) string {
	switch {
	case code == ErrSyntax:
		return "Syntax"
	case code == ErrUnsafeNondet || code == WarnNondetCall:
		return "Determinism"
	case code >= "E011" && code <= "E019":
		return "Contract Structure"
	case code >= "E021" && code <= "E029":
		return "Signatures"
	case code >= "E100" && code < "E200":
		return "File Access"
	case code == ErrRulePanic:
		return "Internal"
	case code == WarnForbiddenImport || code == WarnBuiltinException:
		return "Safety"
	case code == WarnMissingHeader || code == WarnMissingSDKDep:
		return "Header"
	case code == WarnViewReturnType || code == WarnDataclassSizedInt:
		return "Signatures"
	case code == InfoVersion || code == InfoUpgradeAvailable || code == WarnInvalidVersion:
		return "Version"
	default:
		return "Unknown"
	}
}
