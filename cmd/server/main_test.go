package main_test

import (
	"net/http"
	"testing"

	_ "github.com/amirasaad/wallet/docs"
	"github.com/amirasaad/wallet/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type MainTestSuite struct {
	testutils.Suite
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (s *MainTestSuite) TestStartServer_RootRoute() {
	resp := s.MakeRequest(http.MethodGet, "/", "", nil)
	s.Expect(resp, fiber.StatusOK, nil)
}

func (s *MainTestSuite) TestProtectedRoute_Unauthorized() {
	resp := s.MakeRequest(http.MethodGet, "/wallet", "", nil)
	s.Expect(resp, fiber.StatusUnauthorized, nil)
}

func (s *MainTestSuite) TestNotFoundRoute() {
	resp := s.MakeRequest(http.MethodGet, "/doesnotexist", "", nil)
	s.Expect(resp, fiber.StatusNotFound, nil)
}

func (s *MainTestSuite) TestLoginRoute_BadRequest() {
	resp := s.MakeRequest(http.MethodPost, "/auth/login", "", nil)
	s.Expect(resp, fiber.StatusBadRequest, nil)
}

func (s *MainTestSuite) TestSwaggerDoc() {
	resp := s.MakeRequest(http.MethodGet, "/swagger/doc.json", "", nil)
	s.Expect(resp, fiber.StatusOK, nil)
}
