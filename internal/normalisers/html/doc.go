// Package html normalises HTML job postings, such as a saved careers page.
package html
