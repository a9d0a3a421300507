// Package domain defines the storefront data model and the contracts shared
// across the app. It holds plain DTOs mirrored from the REST backend and the
// interfaces that services consume; no transport or storage code lives here.
package domain
