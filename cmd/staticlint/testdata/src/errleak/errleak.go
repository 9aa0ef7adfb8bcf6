package errleak

import "errors"

type Context struct{}

func (c *Context) JSON(code int, obj any)                {}
func (c *Context) AbortWithStatusJSON(code int, obj any) {}

type H map[string]any

func handlers(c *Context) {
	err := errors.New("boom")

	c.JSON(500, H{"message": err.Error()})                 // want "error text must not be written to the response"
	c.AbortWithStatusJSON(500, H{"error": err.Error()})    // want "error text must not be written to the response"
	c.JSON(500, H{"message": "Internal Server Error"})
	c.JSON(200, H{"message": describe(err)})
}

func describe(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
