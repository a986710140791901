// Package lib groups clients for third-party services that do not
// belong to a specific layer.
//
// Currently it holds transhub, the client for the transit operator's
// GraphQL API.
package lib
