/*
Package domain contains the core domain models for the pricetree engine.

It defines the flat entities consumed from the surrounding CRUD layer, the association batches
produced for the persistence layer, and the small value types shared by the tree engine. This
package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Segment, Category, Item: the three hierarchy levels, broadest first.
  - ExistingAssociation: a persisted item-level discount/rebate override.
  - Pricing: a discount/rebate pair of strings where "" means "inherit / unset".
  - ChangeSet: the ordered create/update/delete batches computed on save.
*/
package domain
