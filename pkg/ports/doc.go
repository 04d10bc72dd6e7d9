/*
Package ports defines the driven ports (interfaces) for the pricetree editor.

These interfaces decouple the pricing engine from the persistence collaborator that supplies
the persisted associations and consumes the computed change set.

# Key Interfaces

  - AssociationReader: lists the associations already persisted for a contract.
  - AssociationWriter: applies create, update and delete batches.
  - AssociationRepository: both of the above.
*/
package ports
