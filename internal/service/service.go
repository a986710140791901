// Package service contains the business logic.
//
// It sits between the handler layer and the transit API client.
// It receives validated data from the handler, performs the
// lookup and translates upstream outcomes into API errors.
package service
