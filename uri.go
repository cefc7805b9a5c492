package cval

import "net/url"

// NewURI constructs a uri-kind Value from an already-parsed URL.
// Per spec §3/§4.1, the core never parses URI text itself: a URI is
// "never written as a dedicated literal" and "produced only by
// programmatic construction" — callers own URI parsing and hand the
// core the result.
func NewURI(u *url.URL) Value {
	if u == nil {
		u = &url.URL{}
	}
	return Value{kind: KindURI, str: u.String()}
}

// URI returns the parsed *url.URL for a uri-kind Value. For any other
// kind it returns a ConversionFailed error.
func (v Value) URI() (*url.URL, error) {
	if v.kind != KindURI {
		return nil, conversionErr("cannot convert %s to uri", v.kind)
	}
	return url.Parse(v.str)
}
