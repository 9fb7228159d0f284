package httputil

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

const contentTypeJSON = "application/json; charset=utf-8"

// WriteJSON encodes v as the response body with statusCode.
// Encoding failures produce a bare 500.
func WriteJSON(ctx *fasthttp.RequestCtx, statusCode int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType(contentTypeJSON)
	ctx.SetBody(body)
}

// WriteText writes a plain text body with statusCode.
func WriteText(ctx *fasthttp.RequestCtx, statusCode int, body string) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetBodyString(body)
}
