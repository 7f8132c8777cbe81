package http

// Login godoc
// @Summary Login
// @Description Authenticate with email and password and receive a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,user=object}}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/login [post]
func (h *UserHandler) LoginDoc() {}

// Register godoc
// @Summary Register
// @Description Create a user account and receive a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "Account data"
// @Success 201 {object} object{success=bool,message=string,data=object{token=string,user=object}}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Router /api/auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Verify godoc
// @Summary Verify token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object{user=object}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/verify [get]
func (h *UserHandler) VerifyDoc() {}

// Refresh godoc
// @Summary Refresh token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object{token=string}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/refresh [post]
func (h *UserHandler) RefreshDoc() {}

// Profile godoc
// @Summary Current user profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,message=string,data=object{user=object}}
// @Router /api/auth/profile [get]
func (h *UserHandler) ProfileDoc() {}

// ListUsers godoc
// @Summary List users (admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param role query string false "user or admin"
// @Success 200 {object} object{success=bool,data=object{users=array,total=int}}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/auth/users [get]
func (h *UserHandler) ListUsersDoc() {}

// CreateUser godoc
// @Summary Create user (admin only)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,role=string} true "Account data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,details=array}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/auth/users [post]
func (h *UserHandler) CreateUserDoc() {}

// Stats godoc
// @Summary User statistics (admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object{totalUsers=int,adminCount=int,userCount=int}}
// @Router /api/auth/users/stats [get]
func (h *UserHandler) StatsDoc() {}

// UpdateUser godoc
// @Summary Update user email or role (admin only)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body object{email=string,role=string} true "Fields to change"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/auth/users/{id} [put]
func (h *UserHandler) UpdateUserDoc() {}

// DeleteUser godoc
// @Summary Delete user (admin only)
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/auth/users/{id} [delete]
func (h *UserHandler) DeleteUserDoc() {}
