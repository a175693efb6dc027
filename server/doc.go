// Package server provides the HTTP layer over the resolution pipeline and
// the ingredient repository.
//
// All endpoints respond with a uniform envelope: {success, data} on success
// and {success, message, errors} on failure. Client errors in the read path
// map to 4xx statuses; knowledge model failures never fail the request and
// are reported inline in the analyze payload instead.
package server
