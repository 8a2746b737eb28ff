// Package oauth1 implements the HMAC-SHA1 flavour of OAuth 1.0a request
// signing and the two token calls of the three-legged flow.
package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"sort"
	"strings"
)

const (
	// SignatureMethod is the only method this package produces
	SignatureMethod = "HMAC-SHA1"
	// Version is the oauth_version value sent with every request
	Version = "1.0"

	oauthPrefix = "oauth_"
)

// PercentEncode encodes s per RFC 3986: only A-Z a-z 0-9 - . _ ~ pass through.
// Unlike url.QueryEscape, space becomes %20 and ! ' ( ) * are escaped.
func PercentEncode(s string) string {
	const hexDigits = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

type encodedPair struct {
	key   string
	value string
}

// sortedPairs encodes params and orders them by key, then value
func sortedPairs(params map[string]string, keep func(string) bool) []encodedPair {
	pairs := make([]encodedPair, 0, len(params))
	for k, v := range params {
		if keep != nil && !keep(k) {
			continue
		}
		pairs = append(pairs, encodedPair{key: PercentEncode(k), value: PercentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})
	return pairs
}

// BaseString builds METHOD&enc(url)&enc(k1=v1&k2=v2...)
func BaseString(method, rawURL string, params map[string]string) string {
	pairs := sortedPairs(params, nil)
	joined := make([]string, len(pairs))
	for i, p := range pairs {
		joined[i] = p.key + "=" + p.value
	}

	return strings.Join([]string{
		strings.ToUpper(method),
		PercentEncode(rawURL),
		PercentEncode(strings.Join(joined, "&")),
	}, "&")
}

// SigningKey joins the encoded consumer and token secrets with "&".
// tokenSecret is empty before a request token exists.
func SigningKey(consumerSecret, tokenSecret string) string {
	return PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
}

// Sign returns base64(HMAC-SHA1(signingKey, baseString))
func Sign(method, rawURL string, params map[string]string, consumerSecret, tokenSecret string) string {
	mac := hmac.New(sha1.New, []byte(SigningKey(consumerSecret, tokenSecret)))
	mac.Write([]byte(BaseString(method, rawURL, params)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// AuthorizationHeader renders `OAuth k1="v1", k2="v2"` from the oauth_* params only
func AuthorizationHeader(params map[string]string) string {
	pairs := sortedPairs(params, func(k string) bool {
		return strings.HasPrefix(k, oauthPrefix)
	})

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.key + `="` + p.value + `"`
	}
	return "OAuth " + strings.Join(parts, ", ")
}
