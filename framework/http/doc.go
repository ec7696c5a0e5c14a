// Package http provides Laravel-style request and response helpers.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Bind a JSON body into a struct
//	var payload struct {
//	    Rules validation.FormRules `json:"rules"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	// Submitted fields (JSON object or form values) as validation.FormData
//	data, err := req.FormData()
//
//	// Route params (requires Chi router)
//	form := req.RouteParam("form")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": "msg"}}
package http
