package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apiErr(http.StatusBadRequest, codeBadRequest, "Request body must be JSON.")
	}

	u, err := s.accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    toUserResponse(u),
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apiErr(http.StatusBadRequest, codeBadRequest, "Request body must be JSON.")
	}

	session, err := s.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token: session.Token,
		User:  toUserResponse(session.User),
	})
}
