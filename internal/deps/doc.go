// Package deps verifies the external binaries bookbind shells out to.
package deps
