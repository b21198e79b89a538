// Package scaffold creates new blogsmith sites from embedded templates and
// new post skeletons inside an existing site.
package scaffold
