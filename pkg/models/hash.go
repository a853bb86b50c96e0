package models

// HashAlgorithm identifies a content digest algorithm
type HashAlgorithm string

const (
	AlgoMD5          HashAlgorithm = "MD5"
	AlgoSHA1         HashAlgorithm = "SHA1"
	AlgoSHA256       HashAlgorithm = "SHA256"
	AlgoSHA384       HashAlgorithm = "SHA384"
	AlgoSHA512       HashAlgorithm = "SHA512"
	AlgoRIPEMD160    HashAlgorithm = "RIPEMD160"
	AlgoMACTripleDES HashAlgorithm = "MACTripleDES"
)
