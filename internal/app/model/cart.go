package model

// CartLine holds a product snapshot and its quantity. Quantity is never below 1.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() int64 {
	return l.Product.PriceValue() * int64(l.Quantity)
}

// Cart keeps at most one line per product id, in insertion order.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c *Cart) indexOf(productID string) int {
	for i, line := range c.Lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for p or appends a new line with quantity 1.
func (c *Cart) Add(p Product) CartLine {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return c.Lines[i]
	}
	line := CartLine{Product: p, Quantity: 1}
	c.Lines = append(c.Lines, line)
	return line
}

// UpdateQuantity applies delta to a line, clamping the result at 1.
// It reports false when no line exists for productID.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	qty := c.Lines[i].Quantity + delta
	if qty < 1 {
		qty = 1
	}
	c.Lines[i].Quantity = qty
	return true
}

func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.Lines = []CartLine{}
}

func (c Cart) Find(productID string) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

func (c Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Subtotal()
	}
	return total
}

func (c Cart) TotalItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
