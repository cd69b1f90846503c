package common

const (
	Version           = "0.1.0"
	BatchFileName     = "jfront-batch.toml"
	UnitFileExtension = ".yaml"
)

// Well-known qualified class names the resolver treats specially.
const (
	ObjectClass           = "java.lang.Object"
	StringClass           = "java.lang.String"
	ThrowableClass        = "java.lang.Throwable"
	ExceptionClass        = "java.lang.Exception"
	RuntimeExceptionClass = "java.lang.RuntimeException"
	ErrorClass            = "java.lang.Error"
	CloneableClass        = "java.lang.Cloneable"
	SerializableClass     = "java.io.Serializable"
	LangPackage           = "java.lang"
)

// ConstructorName is the member name shared by all constructors.
const ConstructorName = "<init>"

// ArrayLength is the name of the implicit length field of arrays.
const ArrayLength = "length"
