// Package handler implements the HTTP endpoints of the quickstart: a greeting
// endpoint driven by a query parameter and a JSON echo endpoint with body
// validation. Both log through the process-wide configured logger.
package handler
