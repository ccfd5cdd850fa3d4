// Package repository defines the collaborators the interpreter executes
// against and ships an in-memory implementation.
//
// Package: repository
// Title: Service and Form Repository
// Description: The interpreter resolves service and form ids through a
//              Repository and opens forms through a Displayer. Registry
//              is a concurrency-safe in-memory Repository built from
//              factories; BasicService and BasicForm are ready-made entities
//              configured from specs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation
//
// Usage:
//
//	reg := repository.NewRegistry(repository.Options{})
//	reg.RegisterService("customer:show", func() repository.Service {
//		return repository.NewService(repository.ServiceSpec{
//			ID:         "customer:show",
//			KeyFields:  []string{"id"},
//			RequireKey: true,
//			Run: func(ctx context.Context, call repository.Call) (any, error) {
//				return lookup(call.Key[0])
//			},
//		})
//	})
package repository
