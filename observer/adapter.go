package observer

import "github.com/icza/csdem/entity"

// EntityHooks adapts the entity-related slice of an Observer into the
// narrower entity.Hooks struct ApplyPacketEntities drives directly.
// entity cannot import this package (Observer references entity.Entity
// itself), so the demo package wires this adapter in instead of a
// shared interface.
func EntityHooks(obs Observer) entity.Hooks {
	return entity.Hooks{
		BeforeCreate: obs.BeforeEntityCreation,
		AfterCreate:  obs.OnEntityCreation,
		BeforeUpdate: obs.BeforeEntityUpdate,
		AfterUpdate:  obs.OnEntityUpdate,
		BeforeDelete: obs.BeforeEntityDeletion,
		AfterDelete:  obs.OnEntityDeletion,
	}
}
