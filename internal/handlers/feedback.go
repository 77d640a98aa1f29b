package handlers

import (
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// The feedback relay carries a human-readable status message across a
// redirect (which has no body) as an encoded `message` query parameter.
// URL-safe base64 keeps the text intact inside the URL. This is a
// cosmetic transport: the message is visible and forgeable by the
// client, so nothing downstream may trust it beyond displaying it.

func encodeMessage(msg string) string {
	return base64.URLEncoding.EncodeToString([]byte(msg))
}

// decodeMessage reverses encodeMessage. Anything that doesn't decode
// (including a forged parameter) renders as no message at all.
func decodeMessage(encoded string) string {
	if encoded == "" {
		return ""
	}
	b, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(b)
}

// redirectWithMessage redirects to path with the encoded message (and
// any extra query parameters) attached.
func redirectWithMessage(c *gin.Context, path, msg string, extra url.Values) {
	q := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("message", encodeMessage(msg))
	c.Redirect(http.StatusFound, path+"?"+q.Encode())
}
