// Package main provides the entry point for the warehouse administration
// application. It starts a web server using the Fiber framework that exposes
// a REST API for managing users, roles, permissions, warehouses, products and
// dynamic product attributes. The application uses gorm for data persistence
// and enforces role-based access control on every API route.
package main
