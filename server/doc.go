// Package server runs the simplemovies HTTP API on gin, served over
// HTTP/1.1 and h2c.
//
// Middleware lives in server/middleware, operational endpoints in
// server/endpoint and the movie API handlers in server/api.
package server
