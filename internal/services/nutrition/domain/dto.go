// Package domain holds the nutrition record types and the ports other modules consume
package domain

// Record is one nutrition row
// numeric facts are per 100 g and individually nullable
type Record struct {
	ID        int64    `json:"id"         example:"7"`
	Name      string   `json:"name"       example:"banana"`
	Category  string   `json:"category"   example:"fruit"`
	Calories  *float64 `json:"calories"   example:"89"`
	Protein   *float64 `json:"protein"    example:"1.1"`
	Fat       *float64 `json:"fat"        example:"0.3"`
	Carbs     *float64 `json:"carbs"      example:"22.8"`
	Fiber     *float64 `json:"fiber"      example:"2.6"`
	ShelfLife string   `json:"shelf_life" example:"2-7 days"`
	Condition string   `json:"condition"  example:"fresh"`
	Deleted   bool     `json:"-"`
}

// Summary is the listing shape for active records
type Summary struct {
	ID       int64    `json:"id"       example:"7"`
	Name     string   `json:"name"     example:"banana"`
	Calories *float64 `json:"calories" example:"89"`
	Protein  *float64 `json:"protein"  example:"1.1"`
	Fat      *float64 `json:"fat"      example:"0.3"`
	Carbs    *float64 `json:"carbs"    example:"22.8"`
}

// UpsertInput creates or refreshes the active record carrying Name
type UpsertInput struct {
	Name      string   `json:"name"       validate:"required,min=1,max=100" example:"banana"`
	Category  string   `json:"category"   validate:"omitempty,max=50"       example:"fruit"`
	Calories  *float64 `json:"calories"   validate:"omitempty,gte=0"        example:"89"`
	Protein   *float64 `json:"protein"    validate:"omitempty,gte=0"        example:"1.1"`
	Fat       *float64 `json:"fat"        validate:"omitempty,gte=0"        example:"0.3"`
	Carbs     *float64 `json:"carbs"      validate:"omitempty,gte=0"        example:"22.8"`
	Fiber     *float64 `json:"fiber"      validate:"omitempty,gte=0"        example:"2.6"`
	ShelfLife string   `json:"shelf_life" validate:"omitempty,max=200"      example:"2-7 days"`
	Condition string   `json:"condition"  validate:"omitempty,max=50"       example:"fresh"`
}

// ListInput pages through active records
type ListInput struct {
	Limit  int `json:"limit,omitempty"  validate:"omitempty,min=1,max=500" example:"100"`
	Offset int `json:"offset,omitempty" validate:"omitempty,min=0"         example:"0"`
}
