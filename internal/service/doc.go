// Package service implements the application façade over the store
// layer: input validation, tag recomputation, transactional group-scoped
// memo operations, and the read composition behind tag and group queries.
package service
