// Package staging manages the scoped working directories used while
// re-encoding and concatenating parts, including sweep of directories
// abandoned by interrupted runs.
package staging
