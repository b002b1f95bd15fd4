package cart

// Line is a cart entry holding a snapshot of the product at the moment it was
// added. Prices shown in the cart and charged at checkout come from this
// snapshot, not from a fresh product read.
type Line struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart keeps at most one line per product, in insertion order.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges the quantity into an existing line for the same product, or
// appends a new line. Quantities below one are ignored.
func (c *Cart) Add(line Line) {
	if line.Quantity < 1 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Update sets the quantity of the line for productID. A quantity of zero or
// less removes the line. Returns false when no such line exists.
func (c *Cart) Update(productID string, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes the line for productID. Returns false when no such line
// exists.
func (c *Cart) Remove(productID string) bool {
	return c.Update(productID, 0)
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the total number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of price times quantity across all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}
