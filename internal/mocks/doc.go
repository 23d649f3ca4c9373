// Package mocks provides shared test doubles for the store, auth and events
// interfaces.
//
// Store and notifier mocks are built on testify/mock:
//
//	users := new(mocks.UserStore)
//	users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
//
// Password and token mocks use function fields for the common cases where a
// test only needs a canned result.
package mocks
