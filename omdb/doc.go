// Package omdb is the network layer for the OMDb movie catalogue.
//
// Client.Fetch performs a GET with the catalogue's default headers and sorts
// every failure into a NetworkError:
//
//   - KindRaw: the request never produced an HTTP status (refused, timed
//     out, circuit open)
//   - KindAPI: the catalogue answered with its {"Response","Error"} envelope,
//     either as a 4xx body or inside a 2xx response
//   - KindUnexpected: any other status, or a 4xx with an empty body
//
// A 4xx body that is not an envelope becomes UnknownAPIError.
package omdb
