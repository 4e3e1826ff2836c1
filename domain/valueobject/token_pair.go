package valueobject

// TokenPair carries a freshly issued access/refresh token pair. Both tokens
// share the same identity claims and differ only in kind and expiry.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func NewTokenPair(accessToken, refreshToken string) *TokenPair {
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
}
