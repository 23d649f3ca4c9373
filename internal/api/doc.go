// Package api handles incoming HTTP requests, request validation and response
// formatting. Handlers translate HTTP concerns into service calls and map the
// domain error taxonomy back onto status codes.
package api
