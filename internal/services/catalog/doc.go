// Package catalog assembles the read-mostly storefront pages: product
// detail with its reviews, category listings and shop pages. It also
// validates reviews before posting them.
package catalog
