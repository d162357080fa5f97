package storage

// Application keys. Every piece of persistent state lives under one of
// these, except foreign keys carried along by a restored backup.
const (
	KeyMasterCredential = "master-credential"
	KeyFaceTemplate     = "face-descriptor"
	KeyEnrollmentFlag   = "face-id-flag"
	KeySessionExpiry    = "session-expiration"
	KeyVaultCollection  = "vault-collection"
)

// KnownKeys returns the fixed set of application keys. Restore clears
// exactly this set before repopulating the store.
func KnownKeys() []string {
	return []string{
		KeyMasterCredential,
		KeyFaceTemplate,
		KeyEnrollmentFlag,
		KeySessionExpiry,
		KeyVaultCollection,
	}
}
