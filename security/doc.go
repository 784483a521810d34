// Package security builds crypto/tls configurations from YAML settings.
//
// ClientTLS is used by outbound connections (the OMDb HTTP client and the
// redis store), ServerTLS by the HTTP server.
//
//	omdb:
//	  tls:
//	    ca_file: /etc/ssl/private-ca.pem
//	server:
//	  tls:
//	    cert_file: /etc/simplemovies/cert.pem
//	    key_file: /etc/simplemovies/key.pem
package security
