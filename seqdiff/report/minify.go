package report

import (
	"fmt"
	"regexp"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/xml"
)

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]xml$"), xml.Minify)
	return m
}()

// Minify minifies b, mediatype is one of text/html, text/css or an XML type.
func Minify(mediatype string, b []byte) ([]byte, error) {
	b, err := minifier.Bytes(mediatype, b)
	if err != nil {
		return nil, fmt.Errorf("minifying %s: %v", mediatype, err)
	}
	return b, nil
}
