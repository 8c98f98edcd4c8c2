// Package http provides the request and response helpers used by the
// fixture server's handlers.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//	name := req.RouteParam("name")      // chi URL parameter
//	format, err := req.Format()         // ?format=yaml, Accept: application/yaml, or JSON
//
// # Response
//
//	res := gohttp.NewResponse(w)
//	res.Success(names)                  // 200 {"data": names}
//	res.Error(404, "NOT_FOUND", "unknown fixture user", requestID)
//	err := res.Fixture(format, value)   // 200 in JSON or YAML
package http
