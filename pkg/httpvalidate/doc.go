// Package httpvalidate puts a parsed schema in front of net/http handlers.
//
// Middleware reads the request (query string plus a JSON, urlencoded or
// multipart body), validates it and either answers
//
//	400 {"status":"error","message":"Validation error","errors":{"email":"Email is invalid"}}
//
// or calls the next handler with the processed values in the request context:
//
//	mux.Handle("POST /signup", httpvalidate.Middleware(v, signup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		values, _ := httpvalidate.FromContext(r.Context())
//		// values["email"] is trimmed and lower-cased
//	})))
//
// Uploaded files are exposed to the file rules as rules.FileDescriptor values.
package httpvalidate
