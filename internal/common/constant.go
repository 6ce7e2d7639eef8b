package common

// KeyringService is the OS keyring service identifier under which the
// access and refresh tokens are stored.
const KeyringService = "com.gaulatti.cirrus"

const (
	// KeyringAccessAccount is the keyring account name for the access token.
	KeyringAccessAccount = "authToken"
	// KeyringRefreshAccount is the keyring account name for the refresh token.
	KeyringRefreshAccount = "refreshToken"
)
