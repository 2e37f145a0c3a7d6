package aifml

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultHost       = "140.110.3.59"
	DefaultPort       = 80
	DefaultSignInPath = "/aifml/api/sign-in/"
	DefaultFetchPath  = "/aifml/api/profile-get-fmldata/"

	// DefaultBasicAuth is the client credential the sign-in endpoint expects
	// ("pc:pc").
	DefaultBasicAuth = "cGM6cGM="
)

// SignInRequest builds the raw sign-in POST. The form values are
// percent-encoded so credentials containing '&' or '=' cannot corrupt the
// body. The request omits the final CRLF: the AT driver appends it when the
// payload is written.
func SignInRequest(host, path, basicAuth, username, password string) string {
	body := "account=" + url.QueryEscape(username) + "&password=" + url.QueryEscape(password)

	var b strings.Builder
	b.WriteString("POST " + path + " HTTP/1.1\r\n")
	b.WriteString("Authorization: Basic " + basicAuth + "\r\n")
	b.WriteString("Content-Type: application/x-www-form-urlencoded\r\n")
	b.WriteString("Host: " + host + "\r\n")
	b.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	b.WriteString("Connection: close\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return b.String()
}

// FetchRequest builds the raw GET for the fuzzy-logic output, carrying the
// access token as a query parameter. Like SignInRequest it stops short of
// the terminating CRLF that closes the header block.
func FetchRequest(host, path, token string) string {
	var b strings.Builder
	b.WriteString("GET " + path + "?access_token=" + url.QueryEscape(token) + " HTTP/1.1\r\n")
	b.WriteString("Host: " + host + "\r\n")
	b.WriteString("Connection: close\r\n")
	return b.String()
}
