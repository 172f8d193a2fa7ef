// Package types defines the Marketplace interface, the User, Listing and
// Message records, configuration, and the standard errors returned by
// marketplace backends.
package types
