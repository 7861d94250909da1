/*
Package http implements the REST handlers of the selector healer.

	GET  /               liveness text
	GET  /health         status, request totals, mapping store availability
	POST /api/analyze    {html, selector} -> ranked candidates
	GET  /api/mappings   stored mappings, optionally ?version=
*/
package http
