// Package security builds client TLS configuration for outbound
// connections: the speech-to-text API, Redis and Kafka.
//
//	redis:
//	  tls:
//	    enabled: true
//	    ca_file: /etc/ssl/private-ca.pem
package security
