// Package httpserver exposes the inventory operations over HTTP/JSON and
// alert subscriptions over Server-Sent Events.
package httpserver
