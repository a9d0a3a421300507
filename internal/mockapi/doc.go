// Package mockapi is an in-memory implementation of the storefront REST
// backend for local development and tests.
//
// HTTP API (all paths end in a slash, as the Django backend does)
//
//	POST /api/auth/login/                      {username,password} -> {access,refresh,user}
//	POST /api/auth/register/                   create a buyer account
//	GET  /api/auth/user/                       current user            (auth)
//	POST /api/auth/logout/                     revoke the token        (auth)
//	GET  /api/products/                        paginated, filterable listing
//	GET  /api/products/{id}/                   product detail
//	GET  /api/products/autocomplete/?q=        name suggestions
//	GET  /api/products/trending/?limit=        most reviewed products
//	GET  /api/categories/, /api/categories/{slug}/
//	GET  /api/shops/{id}/
//	GET  /api/shops/my_shop/                   shop owned by caller    (auth)
//	GET  /api/shops/{id}/analytics/?days=      owner dashboard         (auth, owner)
//	GET  /api/reviews/?product=, POST /api/reviews/                    (POST auth)
//	GET  /api/shop-reviews/by_shop/?shop_id=, POST /api/shop-reviews/  (POST auth)
//	GET  /api/messages/, POST /api/messages/                           (auth)
//	GET  /api/messages/conversation/?user_id=, /api/messages/unread_count/
//	POST /api/messages/{id}/mark_read/
//	GET  /api/wishlists/, POST /api/wishlists/, DELETE /api/wishlists/{id}/
//	GET  /api/cart/, POST /api/cart/{add_item,update_item,remove_item,clear}/
//	GET  /api/orders/, GET /api/orders/{id}/, POST /api/orders/
//	POST /api/payments/create_intent/, POST /api/payments/{id}/confirm/, GET /api/payments/{id}/
//	POST /api/email-subscription/subscribe/
//
// Behaviour
//
//   - State lives in memory and is lost when the process exits.
//   - Errors are JSON objects with a "detail" message, or DRF-style field
//     errors ({"rating": ["..."]}) for validation failures.
//   - List endpoints for products are paginated ({count,next,previous,results});
//     every other list endpoint returns a bare array.
//   - The server is seeded with two shops, five categories and a dozen products.
package mockapi
