// Package middleware provides gin middleware for the admin API.
//
// RateLimit throttles per client IP, GlobalRateLimit throttles the whole
// API, and CORS lets a browser dashboard on another origin call the API.
package middleware
